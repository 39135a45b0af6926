package main

import (
	"os"

	wrc "www.velocidex.com/golang/go-wrc"
)

var (
	messages_command      = app.Command("messages", "Extracts messages from the message table.")
	messages_command_file = messages_command.Arg("file", "").Required().
				OpenFile(os.O_RDONLY, 0600)
)

func doMessages() {
	stream := openStream(*messages_command_file)
	dump(wrc.GetMessages(stream))
}
