//go:build tools

package main

import (
	_ "github.com/alvaroloes/enumer"
	_ "github.com/golang/mock/mockgen"
)
