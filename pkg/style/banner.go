package style

// Banner is the block art printed before most commands. It can be
// silenced with `banner = false` in config.toml.
const Banner = `██████╗  ██████╗ ████████╗██████╗
██╔══██╗██╔═══██╗╚══██╔══╝██╔══██╗
██║  ██║██║   ██║   ██║   ██████╔╝
██║  ██║██║   ██║   ██║   ██╔══██╗
██████╔╝╚██████╔╝   ██║   ██║  ██║
╚═════╝  ╚═════╝    ╚═╝   ╚═╝  ╚═╝`

// RenderBanner returns the banner in the primary color.
func RenderBanner() string {
	return BannerStyle.Render(Banner)
}
