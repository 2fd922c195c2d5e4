package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"tastebite/internal/api"
	"tastebite/internal/config"
	"tastebite/internal/models"
	"tastebite/internal/storage"
	"tastebite/internal/store"
)

type app struct {
	auth      *store.Auth
	cart      *store.Cart
	favorites *store.Favorites
	orders    *store.Orders
	catalog   *store.Catalog
}

func main() {
	cfg := config.Load()

	local, err := storage.Open(cfg.StateFile)
	if err != nil {
		log.Fatal(err)
	}

	client := api.New(cfg.APIBaseURL, cfg.RequestTimeout, local)
	favorites := store.NewFavorites(client, local)

	a := &app{
		auth:      store.NewAuth(client, local, favorites),
		cart:      store.NewCart(client),
		favorites: favorites,
		orders:    store.NewOrders(client),
		catalog:   store.NewCatalog(client),
	}

	ctx := context.Background()
	a.auth.CheckAuthStatus(ctx)

	fmt.Println("tastebite — type 'help' for commands")
	if user := a.auth.User(); user != nil {
		fmt.Println("signed in as", user.Email)
	}

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		cmd, args := fields[0], fields[1:]
		if cmd == "quit" || cmd == "exit" {
			return
		}
		a.run(ctx, cmd, args)
	}
}

func (a *app) run(ctx context.Context, cmd string, args []string) {
	switch cmd {
	case "help":
		printHelp()
	case "login":
		if len(args) != 2 {
			fmt.Println("usage: login <email> <password>")
			return
		}
		if err := a.auth.Login(ctx, args[0], args[1]); err != nil {
			fmt.Println("login failed:", a.auth.Err())
			return
		}
		fmt.Println("signed in as", a.auth.User().Email)
	case "register":
		if len(args) < 4 {
			fmt.Println("usage: register <username> <email> <password> <full name>")
			return
		}
		input := api.RegisterInput{
			Username: args[0],
			Email:    args[1],
			Password: args[2],
			FullName: strings.Join(args[3:], " "),
		}
		if err := a.auth.Register(ctx, input); err != nil {
			fmt.Println("registration failed:", a.auth.Err())
			return
		}
		fmt.Println("registered; use 'login' to sign in")
	case "logout":
		a.auth.Logout(ctx)
		fmt.Println("signed out")
	case "whoami":
		a.catalog.SetSection(store.SectionProfile)
		user := a.auth.User()
		if user == nil {
			fmt.Println("not signed in")
			return
		}
		fmt.Printf("%s <%s> phone=%q picture=%q\n", user.FullName, user.Email, user.PhoneNumber, user.ProfilePicture)
	case "categories":
		a.catalog.FetchCategories(ctx)
		a.report(a.catalog.Err())
		for _, category := range a.catalog.Categories() {
			fmt.Printf("%-12s %s\n", category.Value, category.Label)
		}
	case "browse":
		a.catalog.SetSection(store.SectionHome)
		category := store.DefaultCategory
		if len(args) > 0 {
			category = strings.ToUpper(args[0])
		}
		a.catalog.SelectCategory(ctx, category)
		a.report(a.catalog.Err())
		a.printProducts()
	case "search":
		if len(args) == 0 {
			fmt.Println("usage: search <query>")
			return
		}
		a.catalog.Search(ctx, strings.Join(args, " "))
		a.report(a.catalog.Err())
		a.printProducts()
	case "cart":
		a.cart.FetchCart(ctx)
		a.report(a.cart.Err())
		for _, item := range a.cart.Items() {
			fmt.Printf("#%d %s x%d @ %.2f\n", item.ProductID, item.ProductName, item.Quantity, item.ProductPrice)
		}
		fmt.Printf("total: %d items, %.2f\n", a.cart.TotalItems(), a.cart.TotalPrice())
	case "add":
		productID, quantity, ok := parseProductArgs(args, 1)
		if !ok {
			fmt.Println("usage: add <productID> [quantity]")
			return
		}
		a.cart.AddItem(ctx, productID, quantity)
		a.report(a.cart.Err())
	case "remove":
		productID, _, ok := parseProductArgs(args, 1)
		if !ok {
			fmt.Println("usage: remove <productID>")
			return
		}
		a.cart.RemoveItem(ctx, productID)
		a.report(a.cart.Err())
	case "qty":
		if len(args) != 2 {
			fmt.Println("usage: qty <productID> <quantity>")
			return
		}
		productID, err1 := strconv.ParseInt(args[0], 10, 64)
		quantity, err2 := strconv.Atoi(args[1])
		if err1 != nil || err2 != nil {
			fmt.Println("usage: qty <productID> <quantity>")
			return
		}
		a.cart.UpdateQuantity(ctx, productID, quantity)
		a.report(a.cart.Err())
	case "fav":
		productID, _, ok := parseProductArgs(args, 1)
		if !ok {
			fmt.Println("usage: fav <productID>")
			return
		}
		product, found := a.findProduct(productID)
		if !found {
			fmt.Println("browse or search first so the product is known")
			return
		}
		a.favorites.ToggleFavorite(ctx, product)
		a.report(a.favorites.Err())
	case "favs":
		for _, product := range a.favorites.Products() {
			fmt.Printf("#%d %s %.2f\n", product.ID, product.Name, product.Price)
		}
	case "order":
		a.orders.CreateOrder(ctx)
		a.report(a.orders.Err())
	case "show":
		orderID, _, ok := parseProductArgs(args, 0)
		if !ok {
			fmt.Println("usage: show <orderID>")
			return
		}
		order := a.orders.OrderDetail(ctx, orderID)
		a.report(a.orders.Err())
		if order == nil {
			return
		}
		fmt.Printf("order #%d %s %s total %.2f\n", order.ID, order.Status, order.CreatedAt.Format("2006-01-02 15:04"), order.TotalAmount)
		for _, item := range order.Items {
			fmt.Printf("  %s x%d @ %.2f\n", item.ProductName, item.Quantity, item.Price)
		}
	case "orders":
		a.orders.FetchOrders(ctx)
		a.report(a.orders.Err())
		for _, order := range a.orders.Orders() {
			fmt.Printf("#%d %s %.2f (%d items) %s\n",
				order.ID, order.Status, order.TotalAmount, len(order.Items), order.CreatedAt.Format("2006-01-02 15:04"))
		}
	case "profile":
		a.updateProfile(ctx, args)
	case "diet":
		a.updateDiet(ctx, args)
	default:
		fmt.Println("unknown command; type 'help'")
	}
}

func (a *app) updateProfile(ctx context.Context, args []string) {
	if len(args) < 2 {
		fmt.Println("usage: profile <name|phone|email> <value>")
		return
	}
	value := strings.Join(args[1:], " ")
	var update api.ProfileUpdate
	switch args[0] {
	case "name":
		update.FullName = &value
	case "phone":
		update.PhoneNumber = &value
	case "email":
		update.Email = &value
	default:
		fmt.Println("usage: profile <name|phone|email> <value>")
		return
	}
	a.auth.UpdateProfile(ctx, update)
	a.report(a.auth.Err())
}

func (a *app) updateDiet(ctx context.Context, args []string) {
	user := a.auth.User()
	if user == nil {
		fmt.Println("not signed in")
		return
	}
	if len(args) != 2 {
		fmt.Println("usage: diet <flag> <on|off>   e.g. diet vegan on")
		return
	}
	prefs := user.DietaryPreferences
	enabled := args[1] == "on"
	switch args[0] {
	case "vegetarian":
		prefs.Vegetarian = enabled
	case "vegan":
		prefs.Vegan = enabled
	case "pescatarian":
		prefs.Pescatarian = enabled
	case "flexitarian":
		prefs.Flexitarian = enabled
	case "paleo":
		prefs.Paleo = enabled
	case "ketogenic":
		prefs.Ketogenic = enabled
	case "halal":
		prefs.Halal = enabled
	case "kosher":
		prefs.Kosher = enabled
	case "fruitarian":
		prefs.Fruitarian = enabled
	case "glutenfree":
		prefs.GlutenFree = enabled
	case "dairyfree":
		prefs.DairyFree = enabled
	case "organic":
		prefs.Organic = enabled
	default:
		fmt.Println("unknown flag:", args[0])
		return
	}
	a.auth.UpdateDietaryPreferences(ctx, prefs)
	a.report(a.auth.Err())
}

func (a *app) findProduct(productID int64) (models.Product, bool) {
	for _, product := range a.catalog.Products() {
		if product.ID == productID {
			return product, true
		}
	}
	for _, product := range a.favorites.Products() {
		if product.ID == productID {
			return product, true
		}
	}
	return models.Product{}, false
}

func (a *app) printProducts() {
	for _, product := range a.catalog.Products() {
		marker := " "
		if a.favorites.IsFavorite(product.ID) {
			marker = "*"
		}
		fmt.Printf("%s #%d %-24s %6.2f  %s\n", marker, product.ID, product.Name, product.Price, product.Category)
	}
}

func (a *app) report(errMsg string) {
	if errMsg != "" {
		fmt.Println("error:", errMsg)
	}
}

func parseProductArgs(args []string, defaultQty int) (int64, int, bool) {
	if len(args) == 0 {
		return 0, 0, false
	}
	productID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return 0, 0, false
	}
	quantity := defaultQty
	if len(args) > 1 {
		parsed, err := strconv.Atoi(args[1])
		if err != nil {
			return 0, 0, false
		}
		quantity = parsed
	}
	return productID, quantity, true
}

func printHelp() {
	fmt.Print(`commands:
  login <email> <password>      sign in
  register <user> <email> <pw> <full name>
  logout                        sign out
  whoami                        show profile
  profile <name|phone|email> <value>
  diet <flag> <on|off>          update a dietary preference
  categories                    list categories
  browse [category]             list products
  search <query>                search products
  cart / add / remove / qty     manage the cart
  fav <productID> / favs        toggle and list favorites
  order / orders / show <id>    place, list, and inspect orders
  quit
`)
}
