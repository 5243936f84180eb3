// Package testsupport builds on-disk fixtures shared by package tests.
package testsupport
