package settings

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrCoerce reports a value that cannot be converted to the field's type.
	ErrCoerce = errors.New("value does not match field type")
	// ErrUnknownField reports a section/key pair outside the schema.
	ErrUnknownField = errors.New("unknown settings field")
)

// Kind is the value type of an editable field.
type Kind int

const (
	KindString Kind = iota
	KindInt
	KindBool
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "integer"
	case KindBool:
		return "boolean"
	default:
		return "string"
	}
}

// Field describes one editable setting.
type Field struct {
	Section string
	Key     string
	Kind    Kind
	Secret  bool
}

// Section groups fields under a heading.
type Section struct {
	Name   string
	Fields []Field
}

var schema = []Section{
	{Name: "server", Fields: []Field{
		{Section: "server", Key: "host", Kind: KindString},
		{Section: "server", Key: "port", Kind: KindInt},
		{Section: "server", Key: "verify_ssl", Kind: KindBool},
		{Section: "server", Key: "timeout", Kind: KindInt},
	}},
	{Name: "auth", Fields: []Field{
		{Section: "auth", Key: "username", Kind: KindString},
		{Section: "auth", Key: "password", Kind: KindString, Secret: true},
	}},
}

// Sections returns the editable schema in display order.
func Sections() []Section {
	out := make([]Section, len(schema))
	for i, sec := range schema {
		out[i] = Section{Name: sec.Name, Fields: append([]Field(nil), sec.Fields...)}
	}
	return out
}

// Get returns the textual value of a field.
func (c Config) Get(section, key string) (string, error) {
	switch section + "." + key {
	case "server.host":
		return c.Server.Host, nil
	case "server.port":
		return strconv.Itoa(c.Server.Port), nil
	case "server.verify_ssl":
		return strconv.FormatBool(c.Server.VerifySSL), nil
	case "server.timeout":
		return strconv.Itoa(c.Server.Timeout), nil
	case "auth.username":
		return c.Auth.Username, nil
	case "auth.password":
		return c.Auth.Password, nil
	}
	return "", fmt.Errorf("%w: %s.%s", ErrUnknownField, section, key)
}

// Set coerces raw to the field's type and stores it. On any error the config
// is left unchanged.
func (c *Config) Set(section, key, raw string) error {
	switch section + "." + key {
	case "server.host":
		host := strings.TrimSpace(raw)
		if host == "" {
			return fmt.Errorf("%w: host must not be empty", ErrCoerce)
		}
		c.Server.Host = host
	case "server.port":
		port, err := parseInt(raw)
		if err != nil {
			return err
		}
		if port < 1 || port > 65535 {
			return fmt.Errorf("%w: port %d out of range", ErrCoerce, port)
		}
		c.Server.Port = port
	case "server.verify_ssl":
		v, err := strconv.ParseBool(strings.TrimSpace(raw))
		if err != nil {
			return fmt.Errorf("%w: %q is not a boolean", ErrCoerce, raw)
		}
		c.Server.VerifySSL = v
	case "server.timeout":
		timeout, err := parseInt(raw)
		if err != nil {
			return err
		}
		if timeout < 1 {
			return fmt.Errorf("%w: timeout must be positive", ErrCoerce)
		}
		c.Server.Timeout = timeout
	case "auth.username":
		c.Auth.Username = raw
	case "auth.password":
		c.Auth.Password = raw
	default:
		return fmt.Errorf("%w: %s.%s", ErrUnknownField, section, key)
	}
	return nil
}

func parseInt(raw string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not an integer", ErrCoerce, raw)
	}
	return v, nil
}
