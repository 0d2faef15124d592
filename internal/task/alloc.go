package task

// NextID returns the smallest positive integer absent from the given ID
// set. It is a pure function of the set: deleted IDs become reusable on
// the next call. A boolean presence table sized len(ids)+1 gives O(n):
// with n IDs in play, some value in 1..n+1 is always free.
func NextID(ids []int) int {
	n := len(ids)
	present := make([]bool, n+2)
	for _, id := range ids {
		if id >= 1 && id <= n+1 {
			present[id] = true
		}
	}
	for candidate := 1; ; candidate++ {
		if !present[candidate] {
			return candidate
		}
	}
}
