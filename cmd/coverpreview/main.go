// coverpreview 在窗口中预览封面，鼠标拖动、滚轮缩放和手柄调整与网页版一致，按 S 保存。
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/ByLCY/coverstudio/book"
	"github.com/ByLCY/coverstudio/dsl"
	"github.com/ByLCY/coverstudio/gesture"
	"github.com/ByLCY/coverstudio/layout"
	"github.com/ByLCY/coverstudio/renderer"
	canvasrenderer "github.com/ByLCY/coverstudio/renderer/canvas"
	"github.com/ByLCY/coverstudio/studio"
)

// wheelStep 把 ebiten 的滚轮刻度换算为浏览器 deltaY 的量级。
const wheelStep = 100

type preview struct {
	studio *studio.Studio
	engine *canvasrenderer.Renderer
	frame  *ebiten.Image
	out    string

	dirty        bool
	inside       bool
	lastX, lastY int
}

func (p *preview) pointer(ev gesture.Event) {
	changed, err := p.studio.Pointer(ev)
	if err != nil {
		log.Printf("处理输入失败: %v", err)
		return
	}
	if changed {
		p.dirty = true
	}
}

func (p *preview) Update() error {
	mx, my := ebiten.CursorPosition()
	x, y := float64(mx), float64(my)
	cv := p.studio.Canvas()
	inside := x >= 0 && y >= 0 && x < cv.Width && y < cv.Height
	if p.inside && !inside {
		p.pointer(gesture.Event{Kind: gesture.EventLeave})
	}
	p.inside = inside

	if mx != p.lastX || my != p.lastY {
		p.lastX, p.lastY = mx, my
		p.pointer(gesture.Event{Kind: gesture.EventMove, X: x, Y: y})
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		p.pointer(gesture.Event{Kind: gesture.EventDown, X: x, Y: y, Button: gesture.PrimaryButton})
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		p.pointer(gesture.Event{Kind: gesture.EventUp, X: x, Y: y, Button: gesture.PrimaryButton})
	}
	if _, wy := ebiten.Wheel(); wy != 0 {
		// ebiten 向上滚动为正，浏览器 deltaY 向上为负。
		p.pointer(gesture.Event{Kind: gesture.EventWheel, X: x, Y: y, DeltaY: -math.Copysign(wheelStep, wy)})
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		if err := p.save(); err != nil {
			log.Printf("保存失败: %v", err)
		} else {
			log.Printf("已保存 %s", p.out)
		}
	}

	if p.dirty || p.frame == nil {
		stack, err := p.studio.Scene()
		if err != nil {
			return err
		}
		img, err := p.engine.RenderImage(stack)
		if err != nil {
			return err
		}
		if p.frame != nil {
			p.frame.Deallocate()
		}
		p.frame = ebiten.NewImageFromImage(img)
		p.dirty = false
	}
	return nil
}

func (p *preview) save() error {
	format, err := renderer.ParseFormat(filepath.Ext(p.out))
	if err != nil {
		return err
	}
	data, err := p.studio.Render(format)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p.out), 0o755); err != nil {
		return err
	}
	return os.WriteFile(p.out, data, 0o644)
}

func (p *preview) Draw(screen *ebiten.Image) {
	if p.frame != nil {
		screen.DrawImage(p.frame, &ebiten.DrawImageOptions{})
	}
}

func (p *preview) Layout(int, int) (int, int) {
	cv := p.studio.Canvas()
	return int(math.Round(cv.Width)), int(math.Round(cv.Height))
}

func main() {
	input := flag.String("in", "", "封面描述文件路径")
	background := flag.String("bg", "", "背景图路径")
	output := flag.String("out", "output/preview.png", "按 S 保存的路径")
	width := flag.Float64("width", layout.DefaultWidth, "画布宽度 (px)")
	fontDir := flag.String("fonts", "", "字体目录")
	flag.Parse()

	engine := canvasrenderer.NewRenderer(*fontDir)
	st, err := studio.New(book.Default(), studio.Options{Canvas: layout.NewCanvas(*width), Engine: engine})
	if err != nil {
		log.Fatalf("初始化失败: %v", err)
	}
	if *input != "" {
		if err := loadDocument(st, *input); err != nil {
			log.Fatalf("%v", err)
		}
	}
	if *background != "" {
		img, err := studio.DecodeBackground(*background)
		if err != nil {
			log.Fatalf("读取背景失败: %v", err)
		}
		_ = st.SetBackground(img)
	}

	p := &preview{studio: st, engine: engine, out: *output, lastX: -1, lastY: -1}
	w, h := p.Layout(0, 0)
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle("Cover Preview")
	if err := ebiten.RunGame(p); err != nil {
		log.Fatal(err)
	}
}

func loadDocument(st *studio.Studio, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("无法打开封面文件 %s: %w", path, err)
	}
	defer f.Close()
	doc, err := dsl.Parse(f)
	if err != nil {
		return fmt.Errorf("解析封面文件失败: %w", err)
	}
	return st.LoadDocument(doc, nil, filepath.Dir(path))
}
