package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/ramoneds/linkwhats/app/repository"
	"github.com/ramoneds/linkwhats/internal/pkg/statistics"
)

// Feature is one marketing highlight on the home page
type Feature struct {
	Title       string
	Description string
}

// FAQEntry is one question/answer pair on the home page
type FAQEntry struct {
	Question string
	Answer   string
}

var homeFeatures = []Feature{
	{"Links Personalizados", "Crie links únicos para seu WhatsApp com mensagens pré-definidas para cada ocasião."},
	{"Múltiplos Links", "Crie diferentes links para diferentes propósitos ou campanhas."},
	{"Análise de Cliques", "Acompanhe quantas pessoas clicaram em seus links e de onde vieram."},
	{"Personalização Visual", "Customize as cores, imagens e estilo da sua página de redirecionamento."},
	{"Links para Redes Sociais", "Adicione links para suas outras redes sociais na mesma página."},
	{"QR Code Automático", "Gere QR Codes para seus links e facilite o compartilhamento offline."},
}

var homeFAQs = []FAQEntry{
	{"O que é o LinkWhats?", "O LinkWhats é uma plataforma que permite criar links personalizados para o WhatsApp com mensagens pré-definidas, facilitando o primeiro contato dos seus clientes."},
	{"É gratuito?", "Sim! Oferecemos um plano gratuito com recursos básicos. Para funcionalidades avançadas, temos planos premium com mais recursos."},
	{"Posso personalizar minha página?", "Sim! Você pode personalizar cores, adicionar sua logo, links para redes sociais e muito mais."},
	{"Como funciona o rastreamento de cliques?", "Cada vez que alguém clica no seu link, registramos informações como data, hora e origem do clique, permitindo que você acompanhe o desempenho."},
	{"Posso ter múltiplos números de WhatsApp?", "Sim! Com nossa conta premium, você pode criar links para diferentes números de WhatsApp."},
	{"É seguro usar o LinkWhats?", "Sim! Não armazenamos mensagens ou conversas do WhatsApp, apenas facilitamos o primeiro contato através do link personalizado."},
}

// HandleHome renders the marketing landing page
func HandleHome(c *fiber.Ctx) error {
	stats := statistics.GetStatisticsData()

	return render(c, "home", fiber.Map{
		"Title":    "LinkWhats",
		"Features": homeFeatures,
		"FAQs":     homeFAQs,
		"Stats":    stats,
	})
}

// HandlePricing renders the plan catalog page
func HandlePricing(c *fiber.Ctx) error {
	plans, err := repository.GetGlobalFactory().GetPlanRepository().GetAll()
	if err != nil {
		log.Errorf("Failed to load plan catalog: %v", err)
	}

	return render(c, "pricing", fiber.Map{
		"Title": "Planos e Preços",
		"Plans": plans,
	})
}

// HandleFeatures renders the standalone features page
func HandleFeatures(c *fiber.Ctx) error {
	return render(c, "features", fiber.Map{
		"Title":    "Recursos",
		"Features": homeFeatures,
	})
}

// HandleFAQ renders the standalone FAQ page
func HandleFAQ(c *fiber.Ctx) error {
	return render(c, "faq", fiber.Map{
		"Title": "Perguntas Frequentes",
		"FAQs":  homeFAQs,
	})
}
