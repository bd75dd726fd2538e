package views

import (
	"context"

	"github.com/a-h/templ"

	"github.com/andripurnomo/folio"
)

// Badge is one technology shown on the home page. The tooltip text is
// revealed on hover and keyboard focus.
type Badge struct {
	ID      string
	Label   string
	Short   string
	Tooltip string
}

// Badges is the fixed tech stack on the home page, in display order.
var Badges = []Badge{
	{
		ID:      "react",
		Label:   "React",
		Short:   "Re",
		Tooltip: "Create-react-app, first frontend library I learned, great for handling user interfaces managing multiple states",
	},
	{
		ID:      "typescript",
		Label:   "TypeScript",
		Short:   "TS",
		Tooltip: "Typescript is a cool programming language, great for reducing data type errors in writing code",
	},
	{
		ID:      "nextjs",
		Label:   "Next.js",
		Short:   "N",
		Tooltip: "NextJS is a framework for react, it's great if you want to implement SSR and SSG which are not in create-react-app",
	},
	{
		ID:      "tailwindcss",
		Label:   "Tailwind CSS",
		Short:   "Tw",
		Tooltip: "TailwindCSS is an excellent css framework, there you get a lot of utility classes and it can be customized",
	},
	{
		ID:      "nodejs",
		Label:   "Node.js",
		Short:   "Node",
		Tooltip: "NodeJS is a runtime environment for javascript, you can run javascript code not only on the frontend but also on the backend",
	},
}

const (
	greeting     = "Hi, Im Andri Purnomo"
	bioRole      = "Frontend Engineer ......."
	bioInterests = "Im currently very interested in Frontend Development using React, Nextjs and Typescript"
	stackHeading = "Current Favorite Tech Stack"
)

// Home renders the bio page. It takes no content input.
func Home(cfg folio.SiteConfig) templ.Component {
	meta := folio.PageMeta{
		URL:    folio.BuildURL(cfg.URL),
		OGType: "website",
	}
	return Layout(cfg, meta, homeBody())
}

func homeBody() templ.Component {
	return component(func(ctx context.Context, h *html) {
		h.raw(`<section class="bio"><h1>`)
		h.text(greeting)
		h.raw(`</h1><p>`)
		h.text(bioRole)
		h.raw(`</p><p>`)
		h.text(bioInterests)
		h.raw(`</p></section>`)

		h.raw(`<section class="tech-stack"><h2>`)
		h.text(stackHeading)
		h.raw(`</h2><ul class="tech-badges">`)
		for _, b := range Badges {
			tipID := "tooltip-" + b.ID
			h.raw(`<li class="tech-badge" tabindex="0"`, attr("aria-label", b.Label), attr("aria-describedby", tipID), `>`)
			h.raw(`<span aria-hidden="true">`)
			h.text(b.Short)
			h.raw(`</span><span class="tooltip" role="tooltip"`, attr("id", tipID), `>`)
			h.text(b.Tooltip)
			h.raw(`</span></li>`)
		}
		h.raw(`</ul></section>`)
	})
}
