// Package config loads and validates veld.json, the project file the CLI
// and dev server operate on.
//
// A minimal veld.json:
//
//	{
//	  "name": "my-app",
//	  "dev": { "port": 3000 },
//	  "deploy": { "bucket": "my-app-site", "region": "us-east-1" }
//	}
//
// Missing fields get defaults from New; Load fails with a structured error
// when the file is absent or invalid.
package config
