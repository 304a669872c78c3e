// Package config loads route manifests for the vroute CLI.
//
// A manifest is stored as vroute.json, vroute.yaml (or .yml) or vroute.toml
// at the project root. This package handles loading, defaulting and
// validating manifests and compiling them into a router.
//
// # Manifest Structure
//
//	{
//	  "name": "shop",
//	  "router": {
//	    "canonicalPaths": true,
//	    "strictParams": true,
//	    "logLevel": "info"
//	  },
//	  "defaults": {
//	    "tags": {"layout": "main"}
//	  },
//	  "routes": [
//	    {"name": "home", "path": "/", "component": "Home"},
//	    {"name": "product", "path": "/products/:id:int",
//	     "query": {"type": "object", "properties": {"page": {"type": "integer"}}}}
//	  ]
//	}
//
// Route fields left empty are filled from "defaults". Tags are merged key
// by key with the route's own tags taking precedence. A route query is an
// inline JSON Schema document.
//
// # Usage
//
//	m, err := config.Load(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	r, err := m.Build(nil, m.Options(logger)...)
package config
