// Command nescore is a headless exerciser for the NES core: it loads a
// ROM, runs it for a fixed number of frames with no display attached, and
// can dump the resulting framebuffer or print header information. It
// exists for smoke-testing and golden-log capture, not as a player
// frontend.
package main

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/u6170252806-cmd/nes-emulator/config"
	"github.com/u6170252806-cmd/nes-emulator/log"
	"github.com/u6170252806-cmd/nes-emulator/nes"
)

type CLI struct {
	Run      Run      `cmd:"" help:"Run a ROM headless for N frames." default:"true"`
	RomInfos RomInfos `cmd:"" help:"Show ROM header info." name:"rom-infos"`

	Log logModMask `help:"${log_help}" placeholder:"mod0,mod1,..."`
}

type Run struct {
	RomPath string `arg:"" name:"/path/to/rom" help:"ROM to run." required:"true" type:"existingfile"`
	Frames  int    `name:"frames" help:"Number of frames to run before exiting." default:"60"`
	Out     string `name:"out" help:"Write the final frame as a PNG to this path." type:"path"`
}

type RomInfos struct {
	RomPath string `arg:"" name:"/path/to/rom" type:"existingfile"`
}

var vars = kong.Vars{
	"log_help": "Enable logging for specified modules.",
}

type logModMask struct{}

func (logModMask) Decode(ctx *kong.DecodeContext) error {
	tok := ctx.Scan.Pop()
	for _, v := range strings.Split(tok.Value.(string), ",") {
		if v == "all" {
			log.EnableModules(log.ModNES, log.ModCPU, log.ModPPU, log.ModAPU, log.ModBus, log.ModMapper, log.ModCartridge, log.ModIO)
			continue
		}
		mod, ok := log.ModuleByName(v)
		if !ok {
			return fmt.Errorf("unknown log module %s", v)
		}
		log.EnableModules(mod)
	}
	return nil
}

func main() {
	var cli CLI
	parser, err := kong.New(&cli, kong.Name("nescore"), kong.Description("headless NES core exerciser"), kong.UsageOnError(), vars)
	checkf(err, "building CLI parser")

	ctx, err := parser.Parse(os.Args[1:])
	checkf(err, "parsing command line")

	cfg := config.LoadOrDefault()
	config.ApplyLogging(cfg)

	checkf(ctx.Run(), "running command")
}

func (r *Run) Run() error {
	buf, err := os.ReadFile(r.RomPath)
	if err != nil {
		return err
	}

	sys, err := nes.LoadROM(buf)
	if sys == nil {
		return err
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "warning:", err)
	}

	for i := 0; i < r.Frames; i++ {
		sys.StepFrame()
	}

	if r.Out != "" {
		return writePNG(r.Out, sys)
	}
	return nil
}

func (r *RomInfos) Run() error {
	buf, err := os.ReadFile(r.RomPath)
	if err != nil {
		return err
	}

	sys, err := nes.LoadROM(buf)
	if sys == nil {
		return err
	}
	fmt.Printf("mapper:  %d\n", sys.Cart.MapperID())
	if err != nil {
		fmt.Println("warning:", err)
	}
	return nil
}

func writePNG(path string, sys *nes.System) error {
	img := image.NewRGBA(image.Rect(0, 0, 256, 240))
	for i, px := range sys.PPU.Screen {
		img.Set(i%256, i/256, color.RGBA{R: px.R, G: px.G, B: px.B, A: 0xFF})
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}

func checkf(err error, action string) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "fatal error %s: %v\n", action, err)
	os.Exit(1)
}
