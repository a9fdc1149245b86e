// Command termview draws the rotation page in a terminal with half-block
// cells, two pixels per cell. The page is visible while the terminal has focus.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"os"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/rook-computer/rotationdemo/internal/app"
	"github.com/rook-computer/rotationdemo/internal/app/screens"
	"github.com/rook-computer/rotationdemo/internal/render"
	"github.com/rook-computer/rotationdemo/internal/state"
)

const upperHalfBlock = '▀'

type view struct {
	screen   tcell.Screen
	app      *app.App
	renderer *render.ImageRenderer
	logger   app.Logger
}

func (v *view) resize() {
	cols, rows := v.screen.Size()
	if err := v.renderer.Resize(cols, rows*2); err != nil {
		v.logger.Errorf("termview", "resize: %v", err)
	}
	v.screen.Sync()
}

// paint maps each pair of pixel rows onto one row of cells.
func (v *view) paint(img *image.RGBA) {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y += 2 {
		for x := b.Min.X; x < b.Max.X; x++ {
			top := img.RGBAAt(x, y)
			bottom := top
			if y+1 < b.Max.Y {
				bottom = img.RGBAAt(x, y+1)
			}
			style := tcell.StyleDefault.
				Foreground(tcell.NewRGBColor(int32(top.R), int32(top.G), int32(top.B))).
				Background(tcell.NewRGBColor(int32(bottom.R), int32(bottom.G), int32(bottom.B)))
			v.screen.SetContent(x-b.Min.X, (y-b.Min.Y)/2, upperHalfBlock, nil, style)
		}
	}
	v.screen.Show()
}

func (v *view) setVisible(visible bool) {
	var err error
	if visible {
		err = v.app.Show()
	} else {
		err = v.app.Hide()
	}
	if err != nil {
		v.logger.Errorf("termview", "visibility %v: %v", visible, err)
	}
}

// run handles terminal events until the user quits.
func (v *view) run() {
	for {
		switch ev := v.screen.PollEvent().(type) {
		case nil:
			return
		case *tcell.EventInterrupt:
			if img, ok := ev.Data().(*image.RGBA); ok && !img.Bounds().Empty() {
				v.paint(img)
			}
		case *tcell.EventResize:
			v.resize()
		case *tcell.EventFocus:
			v.setVisible(ev.Focused)
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
				(ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
				return
			}
			if ev.Key() == tcell.KeyRune && ev.Rune() == ' ' {
				v.setVisible(!v.app.Visible())
			}
		}
	}
}

func main() {
	logPath := flag.String("log", "", "write the debug log to this file")
	noCaptions := flag.Bool("no-captions", false, "do not draw technique names and the angle")
	flag.Parse()

	var logger app.Logger = app.NoopLogger{}
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			fmt.Println("log open error:", err)
			os.Exit(2)
		}
		defer f.Close()
		logger = app.NewFileLogger(f)
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Println("termview needs an interactive terminal")
		os.Exit(2)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Println("terminal error:", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Println("terminal init error:", err)
		os.Exit(1)
	}
	screen.EnableFocus()
	screen.HideCursor()

	cols, rows := screen.Size()
	store := state.NewStore()
	renderer := render.NewImageRenderer(cols, rows*2)
	renderer.Logger = logger
	renderer.OnFrame = func(img *image.RGBA) {
		_ = screen.PostEvent(tcell.NewEventInterrupt(img))
	}

	a := app.New(store, renderer, nil)
	a.Logger = logger
	page := screens.NewRotationScreen(store, logger)
	// Captions at terminal resolution are unreadable unless the window is large.
	page.Captions = !*noCaptions && cols >= 120
	a.Screen = page

	ctx, cancel := context.WithCancel(context.Background())
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := a.Start(gctx)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})

	v := &view{screen: screen, app: a, renderer: renderer, logger: logger}
	v.run()

	cancel()
	err = g.Wait()
	screen.Fini()
	if err != nil {
		fmt.Println("app error:", err)
		os.Exit(1)
	}
}
