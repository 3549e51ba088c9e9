package discovery_test

import (
	"fmt"

	binding "github.com/openbindings/binding-go"
	"github.com/openbindings/binding-go/discovery"
)

func ExampleDiscovery_FindBindings() {
	d, err := discovery.New()
	if err != nil {
		panic(err)
	}

	err = d.AddType(binding.MustType("acme/translations", binding.CapabilityResource,
		binding.MustParameter("locale", binding.Required, nil),
		binding.MustParameter("domain", binding.Optional, "messages"),
	))
	if err != nil {
		panic(err)
	}

	for _, locale := range []string{"en", "de"} {
		b, err := binding.NewResourceBinding("/app/trans/"+locale+"/*.xlf", "acme/translations",
			map[string]any{"locale": locale})
		if err != nil {
			panic(err)
		}
		if _, err := d.AddBinding(b); err != nil {
			panic(err)
		}
	}

	for _, b := range d.FindBindings("acme/translations", discovery.MatchParameter("locale", "de")) {
		r := b.(*binding.ResourceBinding)
		fmt.Println(r.Query(), r.ParameterValues())
	}
	// Output:
	// /app/trans/de/*.xlf map[domain:messages locale:de]
}
