package registry

import "github.com/Bahjat/page-composer/backend/internal/model"

// Static fallback content. Each function returns a fresh value so callers
// may modify what they get.

func defaultNavbar() model.Props {
	return &model.NavbarProps{
		Logo: model.PlaceholderBrandName,
		Links: []model.Link{
			{Label: "Features", Href: "#features"},
			{Label: "Pricing", Href: "#pricing"},
			{Label: "FAQ", Href: "#faq"},
		},
		CTA: &model.Link{Label: "Get started", Href: "#pricing"},
	}
}

func defaultHero() model.Props {
	return &model.HeroProps{
		Headline:    "Everything you need, in one place",
		Subheadline: "A simpler way to get the work done and get back to what matters.",
		PrimaryCTA:  model.Link{Label: "Get started", Href: "#pricing"},
		SecondaryCTA: &model.Link{
			Label: "Learn more",
			Href:  "#features",
		},
	}
}

func defaultSocialProof() model.Props {
	return &model.SocialProofProps{
		Title: "Trusted by teams everywhere",
		Items: []model.LogoEntry{
			{Name: "Northwind"},
			{Name: "Contoso"},
			{Name: "Globex"},
			{Name: "Initech"},
		},
	}
}

func defaultFeatures() model.Props {
	return &model.FeaturesProps{
		Title:    "Why choose us",
		Subtitle: "The essentials, done well.",
		Items: []model.Feature{
			{Title: "Simple", Description: "Get set up in minutes, not weeks.", Icon: "sparkles"},
			{Title: "Reliable", Description: "Built to be there when you need it.", Icon: "shield"},
			{Title: "Supported", Description: "Real people ready to help.", Icon: "chat"},
		},
	}
}

func defaultFeatureSpotlight() model.Props {
	return &model.FeatureSpotlightProps{
		Title:       "Built around the way you work",
		Description: "Focus on outcomes while the details take care of themselves.",
		Items: []string{
			"Clear, predictable results",
			"Works with the tools you already use",
		},
	}
}

func defaultTestimonials() model.Props {
	return &model.TestimonialsProps{
		Title: "What our customers say",
		Items: []model.Testimonial{
			{Quote: "It just works, and it saved us hours every week.", Author: "Alex Morgan", Role: "Operations Lead"},
			{Quote: "The easiest decision we made all year.", Author: "Sam Rivera", Role: "Founder"},
		},
	}
}

func defaultMetrics() model.Props {
	return &model.MetricsProps{
		Title: "By the numbers",
		Items: []model.Metric{
			{Value: "10k+", Label: "Customers"},
			{Value: "99.9%", Label: "Uptime"},
			{Value: "24/7", Label: "Support"},
		},
	}
}

func defaultPricing() model.Props {
	return &model.PricingProps{
		Title: "Simple pricing",
		Plans: []model.PricingPlan{
			{
				Name:     "Starter",
				Price:    "$0",
				Period:   "month",
				Features: []string{"Core features", "Email support"},
				CTA:      model.Link{Label: "Start free", Href: "#signup"},
			},
			{
				Name:        "Pro",
				Price:       "$29",
				Period:      "month",
				Features:    []string{"Everything in Starter", "Priority support"},
				CTA:         model.Link{Label: "Choose Pro", Href: "#signup"},
				Highlighted: true,
			},
		},
	}
}

func defaultFAQ() model.Props {
	return &model.FAQProps{
		Title: "Frequently asked questions",
		Items: []model.FAQItem{
			{Question: "How do I get started?", Answer: "Sign up and follow the short setup guide."},
			{Question: "Can I cancel anytime?", Answer: "Yes, there are no long-term contracts."},
			{Question: "Do you offer support?", Answer: "Our team answers every message within one business day."},
			{Question: "Is my data secure?", Answer: "Your data is encrypted in transit and at rest."},
		},
	}
}

func defaultFinalCTA() model.Props {
	return &model.FinalCTAProps{
		Headline:    "Ready to get started?",
		Subheadline: "Join today and see the difference.",
		CTA:         model.Link{Label: "Get started", Href: "#pricing"},
	}
}

func defaultFooter() model.Props {
	return &model.FooterProps{
		Columns: []model.FooterColumn{
			{
				Title: "Company",
				Links: []model.Link{
					{Label: "About", Href: "/about"},
					{Label: "Contact", Href: "/contact"},
				},
			},
			{
				Title: "Legal",
				Links: []model.Link{
					{Label: "Privacy", Href: "/privacy"},
					{Label: "Terms", Href: "/terms"},
				},
			},
		},
		Copyright: "All rights reserved.",
	}
}
