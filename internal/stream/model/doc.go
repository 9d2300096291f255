// Package model holds the types shared by the stream engine and its hooks:
// the description of a stage, the typed stage handle and the Hook interface.
package model
