// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides unified configuration loading and management for queryfarmer.
//
// # Key Types
//
//   - Config: Main configuration structure with all settings
//   - BackendConfig, TranslationConfig: remote service endpoints
//   - LocaleConfig: where UI string bundles come from and which languages are offered
//   - StorageConfig, LoggingConfig, UIConfig: local client settings
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Environment variables (QUERYFARMER_*), including values from ./.env
//   - ~/.queryfarmer/config.toml
//   - ~/.queryfarmer/config.json
//   - Built-in defaults
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	backend := cfg.Backend.URL
package config
