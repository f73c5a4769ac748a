package codec

// ZigZag is the k-bit signed integer codec using ZigZag coding instead of
// two's complement: it maps signed values to unsigned ones so that small
// magnitudes (positive or negative) occupy small unsigned codes, then
// delegates to Uint(k).
//
// Examples of integer values on the left and their ZigZag-encoded unsigned
// counterparts on the right:
//
//	 0 => 0
//	-1 => 1
//	 1 => 2
//	-2 => 3
//	 2 => 4
//
// ref: https://developers.google.com/protocol-buffers/docs/encoding
func ZigZag(k int) Codec[int64] {
	return Convert(Uint(k),
		func(u uint64) (int64, error) { return decodeZigZag(u), nil },
		func(v int64) (uint64, error) { return encodeZigZag(v), nil },
	)
}

func decodeZigZag(x uint64) int64 {
	return int64(x>>1) ^ -int64(x&1)
}

func encodeZigZag(x int64) uint64 {
	return uint64((x << 1) ^ (x >> 63))
}
