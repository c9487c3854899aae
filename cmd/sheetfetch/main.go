package main

import (
	"sheetfetch/cmd/sheetfetch/commands"
	"sheetfetch/internal/serviceutil"
)

func main() {
	commands.ExecuteContext(serviceutil.SignalContext())
}
