package book

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Apply 把按 JSON 字段名给出的字符串取值覆盖到 base 上，返回新配置与未识别的键。
// 布尔字段接受 true/false/yes/no/on/off；其余字段按原样写入，枚举值不在此处校验。
func Apply(base Config, values map[string]string) (Config, []string, error) {
	raw, err := json.Marshal(base)
	if err != nil {
		return base, nil, fmt.Errorf("序列化配置失败: %w", err)
	}
	fields := map[string]any{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return base, nil, fmt.Errorf("展开配置失败: %w", err)
	}

	var unknown []string
	for key, val := range values {
		current, ok := fields[key]
		if !ok {
			unknown = append(unknown, key)
			continue
		}
		switch current.(type) {
		case bool:
			b, err := parseBool(val)
			if err != nil {
				return base, nil, fmt.Errorf("配置项 %s: %w", key, err)
			}
			fields[key] = b
		default:
			fields[key] = val
		}
	}
	sort.Strings(unknown)

	raw, err = json.Marshal(fields)
	if err != nil {
		return base, nil, fmt.Errorf("序列化配置失败: %w", err)
	}
	var out Config
	if err := json.Unmarshal(raw, &out); err != nil {
		return base, nil, fmt.Errorf("还原配置失败: %w", err)
	}
	return out, unknown, nil
}

func parseBool(v string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "yes", "on":
		return true, nil
	case "no", "off":
		return false, nil
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return false, fmt.Errorf("无法解析布尔值 %q", v)
	}
	return b, nil
}
