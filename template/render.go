package template

import (
	"strings"

	"github.com/Konsultn-Engineering/sqlt/cache"
	"github.com/Konsultn-Engineering/sqlt/dialect"
	"github.com/Konsultn-Engineering/sqlt/utils"
)

// Renderer flattens templates into statement text plus an ordered bind
// value list for one dialect. Renderers are stateless per call and safe for
// concurrent use; the optional render cache is the only shared state.
type Renderer struct {
	dialect dialect.Dialect
	cache   *cache.RenderCache
}

type RendererOption func(*Renderer)

// WithCache memoizes rendered statement text in an LRU of the given size.
func WithCache(size int) RendererOption {
	return func(r *Renderer) {
		r.cache = cache.NewRenderCache(size)
	}
}

func NewRenderer(d dialect.Dialect, opts ...RendererOption) *Renderer {
	r := &Renderer{dialect: d}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

var defaultRenderer = NewRenderer(dialect.Question{})

// Render flattens a template with the default "?" placeholder dialect.
func Render(t *Template) (string, []any, error) {
	return defaultRenderer.Render(t)
}

// planOp is one flattened segment: literal text (count < 0) or a value hole
// producing count placeholders. A count of zero marks an empty expanded
// sequence, rendered as the NULL keyword.
type planOp struct {
	text  string
	count int
}

type plan struct {
	ops  []planOp
	vals []any
	key  uint64
}

func (p *plan) literal(text string) {
	p.ops = append(p.ops, planOp{text: text, count: -1})
	p.key = utils.Mix64(p.key, utils.U64(text))
}

func (p *plan) hole(vals []any) {
	p.ops = append(p.ops, planOp{count: len(vals)})
	p.vals = append(p.vals, vals...)
	p.key = utils.Mix64(p.key, uint64(len(vals)))
}

// Render returns the statement text and bind values for t. The placeholder
// count in the text always equals len(values); any classification or
// reference error fails the render before text is produced.
func (r *Renderer) Render(t *Template) (string, []any, error) {
	p := &plan{key: utils.U64(r.dialect.Placeholder(1))}
	if err := r.walk(t, p); err != nil {
		return "", nil, err
	}

	if r.cache != nil {
		if sql, ok := r.cache.Get(p.key); ok {
			return sql, p.vals, nil
		}
	}

	sql := r.assemble(p)
	if r.cache != nil {
		r.cache.Add(p.key, sql)
	}
	return sql, p.vals, nil
}

// walk flattens depth-first, left to right, preserving bind value order
// across nesting.
func (r *Renderer) walk(t *Template, p *plan) error {
	if t.err != nil {
		return t.err
	}

	chunks := strings.Split(t.text, "?")
	p.literal(chunks[0])
	for i, arg := range t.args {
		switch a := arg.(type) {
		case *Fragment:
			text, err := a.Text()
			if err != nil {
				return err
			}
			p.literal(text)
		case *Template:
			if err := r.walk(a, p); err != nil {
				return err
			}
		default:
			vals, _, err := coerce(a)
			if err != nil {
				return err
			}
			p.hole(vals)
		}
		p.literal(chunks[i+1])
	}
	return nil
}

func (r *Renderer) assemble(p *plan) string {
	var sb strings.Builder
	n := 0
	for _, op := range p.ops {
		switch {
		case op.count < 0:
			sb.WriteString(op.text)
		case op.count == 0:
			sb.WriteString("NULL")
		default:
			for i := 0; i < op.count; i++ {
				if i > 0 {
					sb.WriteString(", ")
				}
				n++
				sb.WriteString(r.dialect.Placeholder(n))
			}
		}
	}
	return sb.String()
}
