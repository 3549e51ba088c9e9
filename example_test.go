package binding_test

import (
	"errors"
	"fmt"
	"log"

	binding "github.com/openbindings/binding-go"
)

func ExampleBase_Initialize() {
	typ := binding.MustType("acme/translations", binding.CapabilityResource,
		binding.MustParameter("locale", binding.Required, nil),
		binding.MustParameter("domain", binding.Optional, "messages"),
	)

	b, err := binding.NewResourceBinding("/app/trans/*.xlf", "acme/translations",
		map[string]any{"locale": "en"})
	if err != nil {
		log.Fatal(err)
	}
	if err := b.Initialize(typ); err != nil {
		log.Fatal(err)
	}

	fmt.Println(b.ParameterValues())
	fmt.Println(b.ParameterValues(binding.WithoutDefaults()))
	// Output:
	// map[domain:messages locale:en]
	// map[locale:en]
}

func ExampleBase_Initialize_missingParameter() {
	typ := binding.MustType("acme/translations", binding.CapabilityResource,
		binding.MustParameter("locale", binding.Required, nil),
	)
	b, _ := binding.NewResourceBinding("/app/trans/*.xlf", "acme/translations", nil)

	err := b.Initialize(typ)
	fmt.Println(errors.Is(err, binding.ErrMissingParameter))
	fmt.Println(b.IsInitialized())
	// Output:
	// true
	// false
}

func ExampleUnmarshal() {
	typ := binding.MustType("acme/plugins", binding.CapabilityClass,
		binding.MustParameter("priority", binding.Optional, float64(0)),
	)
	b, _ := binding.NewClassBinding(`Acme\Plugin\Foo`, "acme/plugins", nil)
	_ = b.Initialize(typ)

	data, err := binding.Marshal(b)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(string(data))

	decoded, err := binding.Unmarshal(data)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(decoded.IsInitialized())
	// Output:
	// {"kind":"class","type":"acme/plugins","class":"Acme\\Plugin\\Foo"}
	// false
}
