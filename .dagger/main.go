// Outfitter CI/CD
//
// Package main provides reproducible builds and tests locally and in GitHub actions.
// It is the main harness for handling nearly all dev operations.
package main

import (
	"context"

	"dagger/outfitter/internal/dagger"
)

// Outfitter is the main module for the Outfitter CI/CD pipeline
type Outfitter struct {
	// Project source directory
	//
	// +private
	Source *dagger.Directory
}

// New creates a new Outfitter CI/CD module instance
func New(
	// Project source directory.
	//
	// +defaultPath="/"
	// +ignore=[".git", ".direnv", ".devenv", "build", "tmp"]
	source *dagger.Directory,
) *Outfitter {
	return &Outfitter{
		Source: source,
	}
}

// goContainer returns an Alpine-based Go container with the project source
// mounted and module/build caches attached.
//
// It is the shared foundation for tests, builds, and linting.
func (o *Outfitter) goContainer() *dagger.Container {
	return dag.Container().
		From("golang:1.25-alpine").
		WithEnvVariable("CGO_ENABLED", "0").
		WithEnvVariable("PATH", "/go/bin:$PATH", dagger.ContainerWithEnvVariableOpts{Expand: true}).
		WithMountedCache("/go/pkg/mod", dag.CacheVolume("go-mod")).
		WithMountedCache("/root/.cache/go-build", dag.CacheVolume("go-build")).
		WithWorkdir("/src").
		WithDirectory("/src", o.Source)
}

// Test runs the outfitter unit tests via "go test"
func (o *Outfitter) Test(ctx context.Context) (string, error) {
	return o.goContainer().
		WithExec([]string{"go", "test", "-v", "./..."}).
		Stdout(ctx)
}
