package entities

// Rand is the random source the entities draw from. *math/rand.Rand
// satisfies it.
type Rand interface {
	Intn(n int) int
	Float64() float64
}
