// Package models contains the GORM persistence models and their mapping to
// and from the domain aggregates. Domain types never carry gorm tags; all
// column mapping lives here.
package models
