// Package config loads runtime settings for tether applications.
//
// Settings live in an optional tether.json next to the application binary
// or at the project root. Every field has a default, so a missing file is
// not an error for Load.
//
// # Configuration File Structure
//
//	{
//	  "debug": false,
//	  "log": {
//	    "level": "info",
//	    "format": "text"
//	  },
//	  "metrics": {
//	    "enabled": true,
//	    "namespace": "tether",
//	    "subsystem": "ui"
//	  },
//	  "tracing": {
//	    "enabled": false
//	  },
//	  "remote": {
//	    "addr": ":8080",
//	    "readLimit": 65536,
//	    "writeTimeout": "10s",
//	    "allowedOrigins": ["https://example.com"]
//	  }
//	}
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.Level()}))
package config
