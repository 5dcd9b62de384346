// Package domain holds the entities and contracts of the blogging service.
//
// Nothing here depends on net/http or on a concrete store. The application
// layer consumes these contracts, the infra layer implements them.
package domain
