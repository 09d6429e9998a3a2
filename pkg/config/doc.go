// Package config provides configuration management for tabular.
//
// A single Config structure covers logging, decimal arithmetic, raw value
// casting and metrics. Files are YAML and support environment variable
// substitution with the ${VAR_NAME} syntax.
//
// # Usage
//
//	cfg, err := config.LoadConfig("tabular.yaml")
//	if err != nil {
//		log.Fatal(err)
//	}
//	t, err := table.New(names, types, rows, table.WithConfig(cfg))
//
// A typical file:
//
//	logging:
//	  level: ${TABULAR_LOG_LEVEL}
//	  encoding: console
//	decimal:
//	  precision: 28
//	cast:
//	  thousands_separators: [",", "_"]
//	metrics:
//	  enabled: true
//
// Fields missing from the file keep the values from Default.
package config
