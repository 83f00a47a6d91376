package main

import (
	"fmt"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/theme"

	"github.com/orcadl/orca/internal/config"
	"github.com/orcadl/orca/internal/convert"
	"github.com/orcadl/orca/internal/download"
	"github.com/orcadl/orca/internal/platform"
	"github.com/orcadl/orca/internal/preview"
	"github.com/orcadl/orca/internal/ui"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "com.orcadl.orca"
	AppName = "Orca"

	WindowWidth  = 960
	WindowHeight = 560
)

func main() {
	fmt.Printf("%s v%s starting...\n", AppName, version)

	myApp := app.NewWithID(AppID)

	settings := config.NewSettings(myApp)

	variant := theme.VariantLight
	if settings.GetThemeVariant() == config.ThemeDark {
		variant = theme.VariantDark
	}
	myApp.Settings().SetTheme(ui.NewOrcaTheme(variant))

	windowTitle := fmt.Sprintf("%s v%s", AppName, version)
	myWindow := myApp.NewWindow(windowTitle)
	myWindow.Resize(fyne.NewSize(WindowWidth, WindowHeight))

	// Warn early when the wrapped tools are missing
	for _, program := range []string{download.DefaultProgram, convert.FFmpegCommand, preview.FFplayCommand} {
		if err := platform.CheckInstalled(program); err != nil {
			log.Printf("warning: %s not found in PATH, related features will fail", program)
		}
	}

	downloadSvc := download.NewController()
	convertSvc := convert.NewService()
	player := preview.NewPlayer()

	ui.NewRootUI(myWindow, myApp, downloadSvc, convertSvc, player)

	myWindow.ShowAndRun()

	// Window closed: stop any preview playback child
	player.Stop()
}
