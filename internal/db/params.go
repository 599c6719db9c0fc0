package db

import (
	"database/sql"
	"fmt"
	"reflect"
	"strings"
	"unicode"
)

// CommandKind distinguishes stored-procedure calls from inline SQL text.
type CommandKind int

const (
	// KindProcedure invokes a stored procedure by schema-qualified name.
	KindProcedure CommandKind = iota
	// KindText runs a parameterized SQL statement.
	KindText
)

// Command is one unit of work sent to a SQL Server store.
type Command struct {
	Text string
	Kind CommandKind
}

// Proc builds a stored-procedure command such as "research.GetIdeaAbstracts".
func Proc(name string) Command {
	return Command{Text: name, Kind: KindProcedure}
}

// Text builds an inline SQL command. Values must always be bound through
// Params, never concatenated into the text.
func Text(query string) Command {
	return Command{Text: query, Kind: KindText}
}

func (c Command) String() string {
	if c.Kind == KindProcedure {
		return "proc " + c.Text
	}
	return "text " + firstLine(c.Text)
}

// validate rejects commands the driver would misroute. go-mssqldb treats any
// command without whitespace as an RPC call, so procedure names must not
// contain whitespace and text commands must.
func (c Command) validate() error {
	text := strings.TrimSpace(c.Text)
	if text == "" {
		return fmt.Errorf("empty command")
	}
	hasSpace := strings.IndexFunc(text, unicode.IsSpace) >= 0
	switch c.Kind {
	case KindProcedure:
		if hasSpace {
			return fmt.Errorf("procedure name %q contains whitespace", c.Text)
		}
	case KindText:
		if !hasSpace {
			return fmt.Errorf("text command %q would be sent as a procedure call", c.Text)
		}
	}
	return nil
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return strings.TrimSpace(s[:i]) + " ..."
	}
	return s
}

// Direction is the binding direction of a named parameter.
type Direction int

const (
	In Direction = iota
	Out
	InOut
)

// Param is one named argument. Name is given without the leading "@".
// For Out and InOut parameters Dest must be a non-nil pointer; it receives the
// value the procedure assigned once the command completes.
type Param struct {
	Name      string
	Value     any
	Direction Direction
	Dest      any
}

// Params is an ordered list of named parameters. The builder methods return
// the extended list so calls can be chained:
//
//	params := db.Params{}.Add("Symbol", symbol).AddIfNotEmpty("Username", user)
type Params []Param

// Add appends an input parameter unconditionally. A nil value is sent as NULL.
func (p Params) Add(name string, value any) Params {
	return append(p, Param{Name: trimAt(name), Value: value})
}

// AddIfNotEmpty appends an input parameter only when value is non-blank.
// Omitted parameters fall back to the procedure's declared default.
func (p Params) AddIfNotEmpty(name, value string) Params {
	if strings.TrimSpace(value) == "" {
		return p
	}
	return p.Add(name, value)
}

// AddIfNotZero appends an input parameter only when value is not the zero
// value of its type (nil pointers, 0, empty strings, zero times).
func (p Params) AddIfNotZero(name string, value any) Params {
	if value == nil {
		return p
	}
	rv := reflect.ValueOf(value)
	if rv.IsZero() {
		return p
	}
	if rv.Kind() == reflect.Pointer {
		return p.Add(name, rv.Elem().Interface())
	}
	return p.Add(name, value)
}

// Out appends an output parameter bound to dest.
func (p Params) Out(name string, dest any) Params {
	return append(p, Param{Name: trimAt(name), Direction: Out, Dest: dest})
}

// InOut appends a parameter that sends the current value of dest and receives
// the procedure's assignment back into it.
func (p Params) InOut(name string, dest any) Params {
	return append(p, Param{Name: trimAt(name), Direction: InOut, Dest: dest})
}

// AddList expands values into one parameter per element named prefix1..prefixN
// and returns the comma-separated placeholder list for an IN (...) clause.
// An empty list yields "NULL" so the clause matches nothing.
func (p Params) AddList(prefix string, values ...any) (Params, string) {
	if len(values) == 0 {
		return p, "NULL"
	}
	prefix = trimAt(prefix)
	placeholders := make([]string, len(values))
	for i, v := range values {
		name := fmt.Sprintf("%s%d", prefix, i+1)
		p = p.Add(name, v)
		placeholders[i] = "@" + name
	}
	return p, strings.Join(placeholders, ",")
}

// Names returns the parameter names in order. Values are never logged.
func (p Params) Names() []string {
	names := make([]string, len(p))
	for i, param := range p {
		names[i] = param.Name
	}
	return names
}

// Get looks a parameter up by name, case-insensitively.
func (p Params) Get(name string) (Param, bool) {
	name = trimAt(name)
	for _, param := range p {
		if strings.EqualFold(param.Name, name) {
			return param, true
		}
	}
	return Param{}, false
}

// args converts the list into database/sql arguments.
func (p Params) args() ([]any, error) {
	out := make([]any, 0, len(p))
	seen := make(map[string]struct{}, len(p))
	for _, param := range p {
		if param.Name == "" {
			return nil, fmt.Errorf("parameter without a name")
		}
		key := strings.ToLower(param.Name)
		if _, dup := seen[key]; dup {
			return nil, fmt.Errorf("duplicate parameter @%s", param.Name)
		}
		seen[key] = struct{}{}

		switch param.Direction {
		case In:
			out = append(out, sql.Named(param.Name, param.Value))
		case Out, InOut:
			if param.Dest == nil || reflect.ValueOf(param.Dest).Kind() != reflect.Pointer {
				return nil, fmt.Errorf("output parameter @%s needs a pointer destination", param.Name)
			}
			out = append(out, sql.Named(param.Name, sql.Out{Dest: param.Dest, In: param.Direction == InOut}))
		default:
			return nil, fmt.Errorf("parameter @%s has unknown direction %d", param.Name, param.Direction)
		}
	}
	return out, nil
}

func trimAt(name string) string {
	return strings.TrimPrefix(strings.TrimSpace(name), "@")
}
