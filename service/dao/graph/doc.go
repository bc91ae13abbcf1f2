// Package graph groups the dao backends storing history graph records:
// memory for tests and single-process editors, fs for any viant/afs URL and
// redis for shared deployments.
package graph
