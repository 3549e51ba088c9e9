// Package manifest reads and validates documents that declare binding types
// and bindings.
//
// A manifest looks like this in JSON (YAML and TOML use the same shape):
//
//	{
//	  "manifest": "1.0.0",
//	  "types": {
//	    "acme/translations": {
//	      "accepts": "resource",
//	      "parameters": [
//	        {"name": "locale", "required": true},
//	        {"name": "domain", "default": "messages"}
//	      ]
//	    }
//	  },
//	  "bindings": [
//	    {"kind": "resource", "type": "acme/translations", "query": "/trans/*.xlf", "parameters": {"locale": "en"}}
//	  ]
//	}
//
// Unknown fields and `x-*` extensions are preserved on unmarshal and marshal.
// Binding entries are kept as raw JSON and decoded with a binding.Codec.
package manifest
