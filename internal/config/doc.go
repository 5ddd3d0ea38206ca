// Package config loads einblatt project configuration.
//
// Configuration comes from, in increasing priority: built-in defaults, the
// config file (einblatt.yaml, einblatt.yml or einblatt.json in the working
// directory, or the file passed with --config), EINBLATT_* environment
// variables, and command line flags.
//
// # Configuration File Structure
//
//	name: docs
//	router:
//	  mode: browser        # browser, hash or memory
//	  basename: /app
//	  routes:              # first match wins
//	    - name: home
//	      path: /
//	    - name: user
//	      path: /user/:id
//	    - name: notFound
//	      path: "*"
//	dev:
//	  host: localhost
//	  port: 3000
//	  static: public
//	  hotReload: true
//	  metrics: true
//	  watch: [styles]
//	log:
//	  level: info          # debug, info, warn or error
//	  format: text         # text or json
//
// Environment variables replace dots with underscores:
// EINBLATT_DEV_PORT=8080, EINBLATT_ROUTER_MODE=hash.
//
// # Usage
//
//	v := config.NewViper()
//	cfg, err := config.Load(v, "")
//	if err != nil {
//	    return err
//	}
//	if err := cfg.Validate(); err != nil {
//	    return err
//	}
package config
