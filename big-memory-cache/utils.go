package bigmemcache

func findNearestPowerOf2Num(n uint) uint {
	if (n & (n - 1)) == 0 {
		return n
	}
	k := uint(1)
	for (k << 1) < n {
		k <<= 1
	}
	return k
}
