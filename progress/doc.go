// Package progress keeps aggregated activity counters for one editing
// session: transitions recorded, cursor moves by kind and saves.
package progress
