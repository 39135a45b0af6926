package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/Velocidex/ordereddict"
	humanize "github.com/dustin/go-humanize"
	"go.uber.org/zap"
	kingpin "gopkg.in/alecthomas/kingpin.v2"
	"www.velocidex.com/golang/binparsergen/reader"
	wrc "www.velocidex.com/golang/go-wrc"

	// Required to find utilities.
	_ "www.velocidex.com/golang/binparsergen"
)

var (
	app = kingpin.New("wrcinfo", "Windows resource (.rsrc) parser and extractor.")

	config_flag   = app.Flag("config", "A YAML config file.").String()
	codepage_flag = app.Flag("codepage", "Codepage of non unicode message strings.").String()
	debug_flag    = app.Flag("debug", "Print decoder traces.").Bool()
	raw_flag      = app.Flag("raw", "The file is a raw resource section, not a PE file.").Bool()
	va_flag       = app.Flag("virtual_address", "Virtual address of a raw resource section.").
			Default("0").Uint32()

	info_command      = app.Command("info", "Displays info about the resources of a file.")
	info_command_file = info_command.Arg("file", "").Required().
				OpenFile(os.O_RDONLY, 0600)
)

func openStream(fd *os.File) *wrc.Stream {
	config, err := loadConfig(*config_flag)
	kingpin.FatalIfError(err, "Can not load config")

	if *codepage_flag != "" {
		config.Codepage = *codepage_flag
	}

	codepage, err := wrc.ParseCodepage(config.Codepage)
	kingpin.FatalIfError(err, "Invalid codepage %v", config.Codepage)

	wrc.SetResourceDataSizeLimit(config.MaxResourceDataSize)

	logger := wrc.NewDebugLogger()
	if *debug_flag || config.Debug {
		logger, err = zap.NewDevelopment()
		kingpin.FatalIfError(err, "Can not create logger")
	}
	wrc.SetLogger(logger)

	options := wrc.StreamOptions{
		ASCIICodepage: codepage,
		Logger:        logger,
	}

	paged_reader, err := reader.NewPagedReader(fd, 4096, 100)
	kingpin.FatalIfError(err, "Can not open file %s: %v", fd.Name(), err)

	if *raw_flag {
		stat, err := fd.Stat()
		kingpin.FatalIfError(err, "Can not stat file %s: %v", fd.Name(), err)

		stream, err := wrc.OpenStream(paged_reader, stat.Size(), *va_flag, options)
		kingpin.FatalIfError(err, "Can not open resources %s: %+v", fd.Name(), err)
		return stream
	}

	pe_file, err := wrc.NewPEFile(paged_reader)
	kingpin.FatalIfError(err, "Can not open file %s: %v", fd.Name(), err)

	stream, err := pe_file.OpenResourceStream(options)
	kingpin.FatalIfError(err, "Can not open resources %s: %+v", fd.Name(), err)

	return stream
}

func dump(value interface{}) {
	serialized, _ := json.MarshalIndent(value, "", "  ")
	fmt.Println(string(serialized))
}

func doInfo() {
	stream := openStream(*info_command_file)

	resources := []*ordereddict.Dict{}
	for _, row := range wrc.ResourcesToDict(stream) {
		size, pres := row.Get("Size")
		if pres {
			size_int, _ := size.(uint32)
			row.Set("HumanSize", humanize.IBytes(uint64(size_int)))
		}
		resources = append(resources, row)
	}

	result := ordereddict.NewDict().
		Set("VirtualAddress", stream.VirtualAddress()).
		Set("Size", humanize.IBytes(uint64(stream.Size()))).
		Set("Codepage", stream.ASCIICodepage().String()).
		Set("Resources", resources)

	dump(result)
}

func main() {
	app.HelpFlag.Short('h')
	app.UsageTemplate(kingpin.CompactUsageTemplate)
	command := kingpin.MustParse(app.Parse(os.Args[1:]))
	switch command {

	case info_command.FullCommand():
		doInfo()

	case messages_command.FullCommand():
		doMessages()

	case strings_command.FullCommand():
		doStrings()

	case version_command.FullCommand():
		doVersion()

	case mui_command.FullCommand():
		doMui()

	case manifest_command.FullCommand():
		doManifest()

	case cat_command.FullCommand():
		doCat()

	case dump_command.FullCommand():
		doDump()
	}
}
