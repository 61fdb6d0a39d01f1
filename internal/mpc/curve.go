package mpc

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"math/big"

	"github.com/btcsuite/btcd/btcec/v2"
)

var curve = btcec.S256()

// N is the order of the secp256k1 base point.
var N = curve.N

// Scalar is an integer modulo the curve order, matching curv's
// Secp256k1Scalar from the cb-mpc package layout this is adapted from.
type Scalar struct {
	v *big.Int
}

// NewScalar reduces v modulo the curve order.
func NewScalar(v *big.Int) *Scalar {
	return &Scalar{v: new(big.Int).Mod(v, N)}
}

// NewScalarFromBytes builds a Scalar from big-endian bytes.
func NewScalarFromBytes(b []byte) *Scalar {
	return NewScalar(new(big.Int).SetBytes(b))
}

// RandomScalar returns a uniformly random nonzero scalar.
func RandomScalar() (*Scalar, error) {
	for {
		v, err := rand.Int(rand.Reader, N)
		if err != nil {
			return nil, err
		}
		if v.Sign() != 0 {
			return &Scalar{v: v}, nil
		}
	}
}

// BigInt returns a defensive copy of the scalar's value.
func (s *Scalar) BigInt() *big.Int { return new(big.Int).Set(s.v) }

// Add returns (s + o) mod N.
func (s *Scalar) Add(o *Scalar) *Scalar { return NewScalar(new(big.Int).Add(s.v, o.v)) }

// Sub returns (s - o) mod N.
func (s *Scalar) Sub(o *Scalar) *Scalar { return NewScalar(new(big.Int).Sub(s.v, o.v)) }

// Mul returns (s * o) mod N.
func (s *Scalar) Mul(o *Scalar) *Scalar { return NewScalar(new(big.Int).Mul(s.v, o.v)) }

// Inv returns the modular inverse of s.
func (s *Scalar) Inv() *Scalar { return NewScalar(new(big.Int).ModInverse(s.v, N)) }

// Negate returns (-s) mod N.
func (s *Scalar) Negate() *Scalar { return NewScalar(new(big.Int).Neg(s.v)) }

// Equal reports whether two scalars hold the same value.
func (s *Scalar) Equal(o *Scalar) bool { return s.v.Cmp(o.v) == 0 }

func (s *Scalar) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.v.String())
}

func (s *Scalar) UnmarshalJSON(b []byte) error {
	var str string
	if err := json.Unmarshal(b, &str); err != nil {
		return err
	}
	v, ok := new(big.Int).SetString(str, 10)
	if !ok {
		return errors.New("mpc: invalid scalar encoding")
	}
	s.v = v
	return nil
}

// Point is a secp256k1 curve point.
type Point struct {
	X, Y *big.Int
}

// BasePoint returns the secp256k1 generator G.
func BasePoint() *Point {
	return &Point{X: new(big.Int).Set(curve.Gx), Y: new(big.Int).Set(curve.Gy)}
}

// ScalarBaseMul computes s*G.
func ScalarBaseMul(s *Scalar) *Point {
	x, y := curve.ScalarBaseMult(s.v.Bytes())
	return &Point{X: x, Y: y}
}

// Mul computes s*P.
func (p *Point) Mul(s *Scalar) *Point {
	x, y := curve.ScalarMult(p.X, p.Y, s.v.Bytes())
	return &Point{X: x, Y: y}
}

// Add computes P+Q.
func (p *Point) Add(o *Point) *Point {
	x, y := curve.Add(p.X, p.Y, o.X, o.Y)
	return &Point{X: x, Y: y}
}

// Equal reports whether two points are the same affine point.
func (p *Point) Equal(o *Point) bool {
	return p.X.Cmp(o.X) == 0 && p.Y.Cmp(o.Y) == 0
}

// Bytes serializes the point in compressed SEC1 form.
func (p *Point) Bytes() []byte {
	var fx, fy btcec.FieldVal
	fx.SetByteSlice(p.X.Bytes())
	fy.SetByteSlice(p.Y.Bytes())
	return btcec.NewPublicKey(&fx, &fy).SerializeCompressed()
}

// PointFromBytes parses a compressed SEC1 point.
func PointFromBytes(b []byte) (*Point, error) {
	pub, err := btcec.ParsePubKey(b)
	if err != nil {
		return nil, err
	}
	ecdsaPub := pub.ToECDSA()
	return &Point{X: ecdsaPub.X, Y: ecdsaPub.Y}, nil
}

func (p *Point) MarshalJSON() ([]byte, error) {
	return json.Marshal(hex.EncodeToString(p.Bytes()))
}

func (p *Point) UnmarshalJSON(b []byte) error {
	var str string
	if err := json.Unmarshal(b, &str); err != nil {
		return err
	}
	raw, err := hex.DecodeString(str)
	if err != nil {
		return err
	}
	parsed, err := PointFromBytes(raw)
	if err != nil {
		return err
	}
	*p = *parsed
	return nil
}
