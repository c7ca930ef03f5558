package main

import (
	"github.com/konarsubhojit/rest-api-send-requests/cmd"
)

func main() {
	cmd.Execute()
}
