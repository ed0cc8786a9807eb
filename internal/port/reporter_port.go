package port

import (
	"github.com/nikolayk812/storefront/internal/domain"
)

// Reporter receives diagnostics context. Nothing is ever read back from it.
type Reporter interface {
	SetUser(email string)
	SetTag(key, value string)
	SetExtra(key, value string)
	AddBreadcrumb(crumb domain.Breadcrumb)
	CaptureException(err error)
}
