/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package main

import (
	"github.com/ssargent/mconfig/cmd/mconfig/cmd"
)

func main() {
	cmd.Execute()
}
