package sqlx

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// JSON 存放 JSON 文档的列，实现 Value() 和 Scan()
type JSON json.RawMessage

// Value 实现 driver.Valuer 接口，空值不允许落库
func (j JSON) Value() (driver.Value, error) {
	if len(j) == 0 {
		return nil, errors.New("空JSON")
	}
	if !json.Valid(j) {
		return nil, errors.New("不是合法的JSON")
	}
	return string(j), nil
}

// Scan 实现 sql.Scanner 接口
func (j *JSON) Scan(value any) error {
	if value == nil {
		*j = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		// 驱动会复用 v，这里必须拷贝
		*j = append((*j)[0:0], v...)
	case string:
		*j = JSON(v)
	default:
		return errors.New("failed to unmarshal JSON value")
	}
	return nil
}

// MarshalJSON 原样输出，避免被 base64 编码
func (j JSON) MarshalJSON() ([]byte, error) {
	if j == nil {
		return []byte("null"), nil
	}
	return j, nil
}

func (j *JSON) UnmarshalJSON(data []byte) error {
	if j == nil {
		return errors.New("null point exception")
	}
	*j = append((*j)[0:0], data...)
	return nil
}
