package lookup

// Dedup drops repeated hostnames, keeping the first occurrence of each in place.
func Dedup(args []string) []string {
	seen := make(map[string]struct{}, len(args))
	hosts := make([]string, 0, len(args))
	for _, host := range args {
		if _, ok := seen[host]; ok {
			continue
		}
		seen[host] = struct{}{}
		hosts = append(hosts, host)
	}
	return hosts
}
