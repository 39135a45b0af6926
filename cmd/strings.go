package main

import (
	"os"

	wrc "www.velocidex.com/golang/go-wrc"
)

var (
	strings_command      = app.Command("strings", "Extracts the string tables.")
	strings_command_file = strings_command.Arg("file", "").Required().
				OpenFile(os.O_RDONLY, 0600)
)

func doStrings() {
	stream := openStream(*strings_command_file)
	dump(wrc.GetStrings(stream))
}
