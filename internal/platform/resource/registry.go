package resource

// Descriptor names one platform resource behind the generic CRUD screens.
// Multipart resources carry file uploads and tunnel PUT through POST with a
// _method override.
type Descriptor struct {
	Name      string // panel-facing identifier
	Path      string // upstream API path
	Multipart bool
}

// registry covers the panel's CRUD screens. Each entry used to be its own
// screen module with duplicated fetch/modal/confirm logic; they share one
// controller here.
var registry = map[string]Descriptor{
	"business-units":      {Name: "business-units", Path: "/manage/business", Multipart: true},
	"outlets":             {Name: "outlets", Path: "/manage/outlets"},
	"products":            {Name: "products", Path: "/manage/products"},
	"product-categories":  {Name: "product-categories", Path: "/manage/product-categories"},
	"customer-categories": {Name: "customer-categories", Path: "/manage/customer-category"},
	"members":             {Name: "members", Path: "/manage/members"},
	"taxes":               {Name: "taxes", Path: "/manage/taxes"},
	"payment-methods":     {Name: "payment-methods", Path: "/manage/payment_methods"},
	"units":               {Name: "units", Path: "/manage/units"},
	"promos":              {Name: "promos", Path: "/manage/promos"},
	"budget-proposals":    {Name: "budget-proposals", Path: "/manage/budget-proposals"},
	"chart-of-accounts":   {Name: "chart-of-accounts", Path: "/manage/finance/chart-of-accounts"},
}

// Lookup resolves a resource name to its descriptor
func Lookup(name string) (Descriptor, bool) {
	d, ok := registry[name]
	return d, ok
}

// Names returns the registered resource names
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	return names
}
