package viewer

func StatusText(g *Game) string {
	return g.status()
}
