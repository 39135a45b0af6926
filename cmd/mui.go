package main

import (
	"os"

	wrc "www.velocidex.com/golang/go-wrc"
)

var (
	mui_command      = app.Command("mui", "Displays the MUI resource.")
	mui_command_file = mui_command.Arg("file", "").Required().
				OpenFile(os.O_RDONLY, 0600)
)

func doMui() {
	stream := openStream(*mui_command_file)
	dump(wrc.GetMuiInformation(stream))
}
