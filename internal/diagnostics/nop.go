package diagnostics

import "github.com/nikolayk812/storefront/internal/domain"

// Nop discards all diagnostics.
type Nop struct{}

func (Nop) SetUser(string) {}
func (Nop) SetTag(string, string) {}
func (Nop) SetExtra(string, string) {}
func (Nop) AddBreadcrumb(domain.Breadcrumb) {}
func (Nop) CaptureException(error) {}
