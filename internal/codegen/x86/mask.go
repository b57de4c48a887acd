package x86

// Encode hides v under key: key xor (v + key/2), with 32-bit wrap-around.
func Encode(v, key uint32) uint32 {
	return key ^ (v + key/2)
}

// Decode inverts Encode for the same key.
func Decode(enc, key uint32) uint32 {
	return (enc ^ key) - key/2
}
