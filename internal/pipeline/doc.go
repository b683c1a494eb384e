// Package pipeline loads HCL pipeline files and builds the registries they
// declare. A pipeline file carries a settings block plus a tree of registry
// blocks with pass, nested registry and proxy declarations; Build turns that
// tree into live registries ready for querying.
package pipeline
