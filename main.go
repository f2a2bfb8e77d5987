package main

import (
	"os"

	"github.com/chris-regnier/wellnessctl/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
