package modkit

import "crimecast/internal/modkit/module"

// Module is what every service module returns from New; the contract lives in
// package module so modules can be listed without importing modkit
type Module = module.Module
