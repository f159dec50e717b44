// Package config loads hashview.json, the project configuration.
//
// # Configuration File Structure
//
//	{
//	  "name": "shop",
//	  "page": {
//	    "file": "app.page",
//	    "lang": "lang/en.lang",
//	    "collapse": true
//	  },
//	  "dev": {
//	    "port": 3000,
//	    "host": "localhost",
//	    "hotReload": true,
//	    "watch": ["src"],
//	    "ignore": ["*.swp"],
//	    "debounce": "100ms"
//	  },
//	  "publish": {
//	    "bucket": "shop-www",
//	    "prefix": "v2/",
//	    "region": "eu-central-1",
//	    "cacheControl": "max-age=60"
//	  },
//	  "log": {"level": "debug"}
//	}
//
// Relative paths are resolved against the directory holding hashview.json.
//
// # Usage
//
//	cfg, err := config.LoadFromWorkingDir()
//	if err != nil {
//	    errors.Fprint(os.Stderr, err)
//	    os.Exit(1)
//	}
//	fmt.Println("Page:", cfg.PagePath())
package config
