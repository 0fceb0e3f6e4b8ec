// Package fonts 按字体族名在字体目录中查找字体文件，找不到时回退到 Go 字体。
package fonts

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// ErrNotFound 表示字体目录中没有对应的字体文件。
var ErrNotFound = errors.New("字体文件不存在")

var extensions = []string{".ttf", ".otf", ".ttc"}

// Registry 缓存从字体目录读取的字体数据，可并发使用。
type Registry struct {
	dir string

	mu    sync.Mutex
	cache map[string][]byte
}

// NewRegistry 创建以 dir 为根目录的字体表；dir 为空时只能使用回退字体。
func NewRegistry(dir string) *Registry {
	return &Registry{dir: dir, cache: map[string][]byte{}}
}

// Dir 返回字体目录。
func (r *Registry) Dir() string { return r.dir }

// Load 读取字体族在指定字重下的字体数据，返回实际使用的文件路径。
// 依次尝试 <Family>-<Weight>、<Family>-Regular、<Family> 及可变字体文件，族名中的空格被去掉。
func (r *Registry) Load(family, weight string) ([]byte, string, error) {
	if r == nil || r.dir == "" {
		return nil, "", fmt.Errorf("%w: 未配置字体目录 (%s)", ErrNotFound, family)
	}
	key := family + "|" + weight
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, path := range r.candidates(family, weight) {
		if data, ok := r.cache[path]; ok {
			return data, path, nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		r.cache[path] = data
		return data, path, nil
	}
	return nil, "", fmt.Errorf("%w: %s", ErrNotFound, key)
}

func (r *Registry) candidates(family, weight string) []string {
	base := strings.ReplaceAll(family, " ", "")
	stems := []string{base + "-" + weight, base + "-Regular", base, base + "-VariableFont_wght"}
	var out []string
	for _, stem := range stems {
		for _, ext := range extensions {
			out = append(out, filepath.Join(r.dir, stem+ext))
		}
	}
	return out
}

// Fallback 返回内置的 Go 字体：bold 为 true 时返回粗体。
func Fallback(bold bool) []byte {
	if bold {
		return gobold.TTF
	}
	return goregular.TTF
}
