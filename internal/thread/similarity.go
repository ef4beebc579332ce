package thread

// similarity returns the classic Ratcliff/Obershelp similarity of two
// strings: twice the number of matching characters over the total length,
// with matches found by recursing around the longest common block. Values
// are in [0, 1]; two empty strings are fully similar.
func similarity(a, b string) float64 {
	ar := []rune(a)
	br := []rune(b)
	total := len(ar) + len(br)
	if total == 0 {
		return 1.0
	}
	b2j := make(map[rune][]int, len(br))
	for j, r := range br {
		b2j[r] = append(b2j[r], j)
	}
	matched := matchTotal(ar, br, 0, len(ar), 0, len(br), b2j)
	return 2.0 * float64(matched) / float64(total)
}

func matchTotal(a, b []rune, alo, ahi, blo, bhi int, b2j map[rune][]int) int {
	i, j, k := longestMatch(a, alo, ahi, blo, bhi, b2j)
	if k == 0 {
		return 0
	}
	return k +
		matchTotal(a, b, alo, i, blo, j, b2j) +
		matchTotal(a, b, i+k, ahi, j+k, bhi, b2j)
}

// longestMatch finds the longest block a[i:i+k] == b[j:j+k] with
// alo <= i < i+k <= ahi and blo <= j < j+k <= bhi. Among maximal blocks it
// prefers the one starting earliest in a, then earliest in b.
func longestMatch(a []rune, alo, ahi, blo, bhi int, b2j map[rune][]int) (besti, bestj, bestsize int) {
	besti, bestj = alo, blo
	j2len := make(map[int]int)
	for i := alo; i < ahi; i++ {
		newj2len := make(map[int]int)
		for _, j := range b2j[a[i]] {
			if j < blo {
				continue
			}
			if j >= bhi {
				break
			}
			k := j2len[j-1] + 1
			newj2len[j] = k
			if k > bestsize {
				besti, bestj, bestsize = i-k+1, j-k+1, k
			}
		}
		j2len = newj2len
	}
	return besti, bestj, bestsize
}
