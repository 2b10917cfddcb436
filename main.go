package main

import (
	"os"

	"github.com/SaehwanPark/parquet-summarizer/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
