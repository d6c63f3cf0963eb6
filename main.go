// Copyright 2025 The WikiGeo Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"github.com/jcodagnone/wikigeo/cmd"
)

var Version = "development"

func main() {
	cmd.Execute(Version)
}
