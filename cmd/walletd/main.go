package main

import (
	"github.com/vietddude/walletcore/internal/cli"
)

func main() {
	cli.Execute()
}
