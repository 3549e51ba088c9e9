package manifest_test

import (
	"fmt"
	"log"

	"github.com/openbindings/binding-go/manifest"
)

func ExampleParse() {
	doc := []byte(`
manifest: 1.0.0
types:
  acme/translations:
    accepts: resource
    parameters:
      - name: locale
        required: true
bindings:
  - kind: resource
    type: acme/translations
    query: /trans/*.xlf
`)

	m, err := manifest.Parse(doc, manifest.FormatYAML)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(m.Validate())
	// Output:
	// invalid manifest: bindings[0]: binding: missing value for required parameter "locale" of type "acme/translations"
}

func ExampleManifest_Build() {
	m, err := manifest.Parse([]byte(`{
		"manifest": "1.0.0",
		"types": {"acme/plugins": {"accepts": "class", "parameters": [{"name": "priority", "default": 10}]}},
		"bindings": [{"kind": "class", "type": "acme/plugins", "class": "Acme\\Plugin"}]
	}`), manifest.FormatJSON)
	if err != nil {
		log.Fatal(err)
	}

	bundle, err := m.Build(nil)
	if err != nil {
		log.Fatal(err)
	}
	b := bundle.Bindings[0]
	if err := b.Initialize(bundle.Types[0]); err != nil {
		log.Fatal(err)
	}
	fmt.Println(b.ParameterValues())
	// Output: map[priority:10]
}
