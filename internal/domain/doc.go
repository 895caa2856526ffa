// Package domain contains the core model for domscan.
//
// The domain is transport- and persistence-agnostic: it does not depend on net/http,
// YAML parsing, or the terminal. Infra/adapters map into/from these types.
package domain
