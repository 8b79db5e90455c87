package quantity

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/astrenok/unum/dim"
	"github.com/astrenok/unum/registry"
	"github.com/astrenok/unum/unit"
)

// Quantity binds a magnitude to a unit expression and to the registry
// whose definitions give those units meaning. All arithmetic returns a
// fresh Quantity; only Ito mutates the receiver.
type Quantity struct {
	mag   Magnitude
	units unit.Expression
	reg   *registry.Registry
}

// New builds a Quantity by parsing units against reg. An empty or
// blank units string yields a dimensionless quantity.
func New(reg *registry.Registry, mag Magnitude, units string) (*Quantity, error) {
	expr, err := parseUnits(reg, units)
	if err != nil {
		return nil, err
	}
	return &Quantity{mag: mag, units: expr, reg: reg}, nil
}

// NewScalar is New with a plain float64 magnitude.
func NewScalar(reg *registry.Registry, value float64, units string) (*Quantity, error) {
	return New(reg, Scalar(value), units)
}

// FromUnits builds a Quantity around an already-parsed unit expression.
// The expression must come from reg.
func FromUnits(reg *registry.Registry, mag Magnitude, units unit.Expression) (*Quantity, error) {
	if units.Origin() != 0 && units.Origin() != reg.ID() {
		return nil, fmt.Errorf("%w: expression from registry %d used with registry %d",
			unit.ErrRegistryMismatch, units.Origin(), reg.ID())
	}
	return &Quantity{mag: mag, units: units, reg: reg}, nil
}

// Parse reads "<number> <units>" (e.g. "3.5 km", "9.81 m/s**2"). The
// number may abut the units ("100m"); a bare number is dimensionless.
func Parse(reg *registry.Registry, s string) (*Quantity, error) {
	text := strings.TrimSpace(s)
	if text == "" {
		return nil, fmt.Errorf("quantity: empty input")
	}
	// Longest numeric prefix wins, so "2e3 m" reads as 2000 meters
	// while "2e" would fall back to 2 * (units "e").
	for i := len(text); i > 0; i-- {
		v, err := strconv.ParseFloat(text[:i], 64)
		if err != nil {
			continue
		}
		return New(reg, Scalar(v), text[i:])
	}
	return nil, fmt.Errorf("quantity: %q does not start with a number", text)
}

func parseUnits(reg *registry.Registry, units string) (unit.Expression, error) {
	if strings.TrimSpace(units) == "" {
		return unit.Dimensionless(reg.ID(), 1), nil
	}
	return reg.ParseUnits(units)
}

// Magnitude returns the payload. For Slice it is the live buffer.
func (q *Quantity) Magnitude() Magnitude { return q.mag }

// Units returns the unit expression.
func (q *Quantity) Units() unit.Expression { return q.units }

// Registry returns the registry the quantity is bound to.
func (q *Quantity) Registry() *registry.Registry { return q.reg }

// Dimensionality returns the dimension vector of the units.
func (q *Quantity) Dimensionality() (dim.Vector, error) {
	return q.reg.Dimensionality(q.units)
}

func (q *Quantity) sameRegistry(o *Quantity) error {
	if q.reg != o.reg {
		return fmt.Errorf("%w: quantities from different registries", unit.ErrRegistryMismatch)
	}
	return nil
}

func applyConversion(m Magnitude, c registry.Conversion) Magnitude {
	out := m.Scale(c.Factor)
	if c.Offset != 0 {
		out = out.Shift(c.Offset)
	}
	return out
}

// Add returns q + o in q's units. o must be dimensionally equivalent;
// it is converted before the addition, so 1 m + 100 cm = 2 m.
func (q *Quantity) Add(o *Quantity) (*Quantity, error) {
	return q.addSub(o, Magnitude.Add)
}

// Sub returns q - o in q's units.
func (q *Quantity) Sub(o *Quantity) (*Quantity, error) {
	return q.addSub(o, Magnitude.Sub)
}

func (q *Quantity) addSub(o *Quantity, op func(Magnitude, Magnitude) (Magnitude, error)) (*Quantity, error) {
	if err := q.sameRegistry(o); err != nil {
		return nil, err
	}
	conv, err := q.reg.NewConversion(o.units, q.units)
	if err != nil {
		return nil, err
	}
	out, err := op(q.mag, applyConversion(o.mag, conv))
	if err != nil {
		return nil, err
	}
	return &Quantity{mag: out, units: q.units, reg: q.reg}, nil
}

// Mul returns q * o with units multiplied.
func (q *Quantity) Mul(o *Quantity) (*Quantity, error) {
	if err := q.sameRegistry(o); err != nil {
		return nil, err
	}
	units, err := q.units.Mul(o.units)
	if err != nil {
		return nil, err
	}
	out, err := q.mag.Mul(o.mag)
	if err != nil {
		return nil, err
	}
	return &Quantity{mag: out, units: units, reg: q.reg}, nil
}

// Div returns q / o with units divided.
func (q *Quantity) Div(o *Quantity) (*Quantity, error) {
	if err := q.sameRegistry(o); err != nil {
		return nil, err
	}
	units, err := q.units.Div(o.units)
	if err != nil {
		return nil, err
	}
	out, err := q.mag.Div(o.mag)
	if err != nil {
		return nil, err
	}
	return &Quantity{mag: out, units: units, reg: q.reg}, nil
}

// MulScalar returns q scaled by a bare number; units are unchanged.
func (q *Quantity) MulScalar(v float64) *Quantity {
	return &Quantity{mag: q.mag.Scale(v), units: q.units, reg: q.reg}
}

// Pow raises q to a rational exponent: magnitude and units together.
func (q *Quantity) Pow(n dim.Rational) (*Quantity, error) {
	units, err := q.units.Pow(n)
	if err != nil {
		return nil, err
	}
	return &Quantity{mag: q.mag.Pow(n.Float64()), units: units, reg: q.reg}, nil
}

// To returns a copy of q converted into the given units.
func (q *Quantity) To(units string) (*Quantity, error) {
	target, err := parseUnits(q.reg, units)
	if err != nil {
		return nil, err
	}
	return q.ToUnits(target)
}

// ToUnits is To with an already-parsed target expression.
func (q *Quantity) ToUnits(target unit.Expression) (*Quantity, error) {
	conv, err := q.reg.NewConversion(q.units, target)
	if err != nil {
		return nil, err
	}
	return &Quantity{mag: applyConversion(q.mag, conv), units: target, reg: q.reg}, nil
}

// Ito converts q in place. Magnitudes implementing InPlace (Slice)
// are rewritten without reallocation; everything else goes through the
// copying path and the result is swapped in.
func (q *Quantity) Ito(units string) error {
	target, err := parseUnits(q.reg, units)
	if err != nil {
		return err
	}
	conv, err := q.reg.NewConversion(q.units, target)
	if err != nil {
		return err
	}
	if ip, ok := q.mag.(InPlace); ok {
		ip.ScaleShiftInPlace(conv.Factor, conv.Offset)
	} else {
		q.mag = applyConversion(q.mag, conv)
	}
	q.units = target
	return nil
}

// Cmp orders q against o: -1, 0 or +1. The side with the simpler unit
// expression is converted into the other's units first; ties convert o
// into q's units. Dimension mismatch is an error, never a false.
func (q *Quantity) Cmp(o *Quantity) (int, error) {
	if err := q.sameRegistry(o); err != nil {
		return 0, err
	}
	if q.units.Len() < o.units.Len() {
		conv, err := q.reg.NewConversion(q.units, o.units)
		if err != nil {
			return 0, err
		}
		return applyConversion(q.mag, conv).Cmp(o.mag)
	}
	conv, err := q.reg.NewConversion(o.units, q.units)
	if err != nil {
		return 0, err
	}
	return q.mag.Cmp(applyConversion(o.mag, conv))
}

// Equal reports whether q and o denote the same physical quantity,
// converting as needed: 1 m equals 100 cm.
func (q *Quantity) Equal(o *Quantity) (bool, error) {
	c, err := q.Cmp(o)
	if err != nil {
		return false, err
	}
	return c == 0, nil
}

// Less reports q < o after conversion.
func (q *Quantity) Less(o *Quantity) (bool, error) {
	c, err := q.Cmp(o)
	if err != nil {
		return false, err
	}
	return c < 0, nil
}

// String renders "<magnitude> <units>", e.g. "3.5 meter / second".
func (q *Quantity) String() string {
	return fmt.Sprintf("%v %s", q.mag, q.units)
}
