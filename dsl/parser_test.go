package dsl_test

import (
	"strings"
	"testing"

	"github.com/ByLCY/coverstudio/dsl"
)

const sampleCover = `
// 示例封面
cover Demo v1 {
  config {
    title: "星屑の錬金術師"
    titleOrientation: vertical
    titleAlign: top
    obiHeight: large
    obiBadgeAnchorY: top-edge
    titleSize: xl; showObi: true
  }

  canvas {
    width: 400px
    background: "bg.png"
  }

  gestures {
    layer title {
      press 100, 100
      move 130 80
      release
      wheel up 3
      move -5 -10
    }
  }
}
`

func TestParseDocument(t *testing.T) {
	doc, err := dsl.ParseString(sampleCover)
	if err != nil {
		t.Fatalf("解析失败: %v", err)
	}
	if doc.Name != "Demo" || doc.Version != "v1" {
		t.Fatalf("文档头解析错误: %s %s", doc.Name, doc.Version)
	}
	if len(doc.Sections) != 3 {
		t.Fatalf("期望 3 个段落，实际 %d", len(doc.Sections))
	}
	kinds := []string{"config", "canvas", "gestures"}
	for i, want := range kinds {
		if got := doc.Sections[i].Kind(); got != want {
			t.Fatalf("第 %d 个段落期望 %s，实际 %s", i, want, got)
		}
	}

	cfg := doc.Sections[0].Config.Block.Assignments()
	if len(cfg) != 7 {
		t.Fatalf("期望 7 个配置项，实际 %d", len(cfg))
	}
	if cfg[0].Key != "title" || cfg[0].Value.Text() != "星屑の錬金術師" {
		t.Fatalf("字符串值解析错误: %s=%q", cfg[0].Key, cfg[0].Value.Text())
	}
	if cfg[4].Value.Text() != "top-edge" {
		t.Fatalf("带连字符的标识符应整体保留，实际 %q", cfg[4].Value.Text())
	}

	canvas := doc.Sections[1].Canvas.Block.Assignments()
	if canvas[0].Value.Text() != "400px" {
		t.Fatalf("数字值解析错误: %q", canvas[0].Value.Text())
	}
}

func TestCommandNumbers(t *testing.T) {
	doc, err := dsl.ParseString(sampleCover)
	if err != nil {
		t.Fatalf("解析失败: %v", err)
	}
	layers := doc.Sections[2].Gestures.Block.Commands()
	if len(layers) != 1 || layers[0].Name != "layer" {
		t.Fatalf("期望一个 layer 分组")
	}
	steps := layers[0].Block.Commands()
	if len(steps) != 5 {
		t.Fatalf("期望 5 个步骤，实际 %d", len(steps))
	}

	nums, words, err := steps[0].Numbers()
	if err != nil {
		t.Fatalf("参数解析失败: %v", err)
	}
	if len(words) != 0 || len(nums) != 2 || nums[0] != 100 || nums[1] != 100 {
		t.Fatalf("press 参数错误: %v %v", nums, words)
	}

	nums, words, err = steps[3].Numbers()
	if err != nil {
		t.Fatalf("参数解析失败: %v", err)
	}
	if len(words) != 1 || words[0] != "up" || len(nums) != 1 || nums[0] != 3 {
		t.Fatalf("wheel 参数错误: %v %v", nums, words)
	}

	nums, _, err = steps[4].Numbers()
	if err != nil {
		t.Fatalf("参数解析失败: %v", err)
	}
	if nums[0] != -5 || nums[1] != -10 {
		t.Fatalf("负数解析错误: %v", nums)
	}
}

func TestParseRejectsUnknownSection(t *testing.T) {
	_, err := dsl.Parse(strings.NewReader("cover X v1 {\n  page { }\n}\n"))
	if err == nil {
		t.Fatalf("未知段落应当报错")
	}
}
